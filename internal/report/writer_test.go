package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/volsreport/volsreport/internal/model"
)

// TestSimpleWriter tests the plain-text preview.
func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes the title and every section", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(newTestRecord()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"Информация по бездоговорному подвесу ВОЛС (на 01.09.2025)",
			"1. Общая ситуация",
			"  Выявлено бездоговорных опор: 58 214",
			"  Юго-Западные ЭС: 7412 (основной объём — Ростелеком) [Высокий]",
			"  Юго-Западные ЭС: договор на согласовании",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
	})

	t.Run("hides empty sections by default", func(t *testing.T) {
		t.Parallel()

		rec := newTestRecord()
		rec.Rostelecom = nil

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(rec); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(buf.String(), "4. ПАО") {
			t.Error("expected empty section to be hidden")
		}

		buf.Reset()
		if _, err := NewSimpleWriter(&buf, WithShowEmpty(true)).Write(rec); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "Нет данных") {
			t.Error("expected empty section placeholder")
		}
	})

	t.Run("verbose adds risks and conclusions", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf, WithVerbose(true), WithContent(Options{DocumentConclusions: []string{"Проверить."}}))
		if _, err := w.Write(newTestRecord()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "Распределение риска") {
			t.Error("expected risk distribution")
		}
		if !strings.Contains(output, "— Проверить.") {
			t.Error("expected configured conclusion")
		}
	})
}

// TestJSONWriter tests JSON output.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes a record that decodes back", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(newTestRecord()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var got model.Record
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if got.Totals.Found != 58214 {
			t.Errorf("Totals.Found = %d, want 58214", got.Totals.Found)
		}
	})

	t.Run("pretty prints when configured", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).WriteValue(map[string]int{"a": 1}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if buf.String() != "{\n  \"a\": 1\n}\n" {
			t.Errorf("unexpected output %q", buf.String())
		}
	})

	t.Run("returns marshal errors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).WriteValue(make(chan int)); err == nil {
			t.Error("expected error for unsupported value")
		}
		if buf.Len() != 0 {
			t.Error("expected nothing written on error")
		}
	})
}

// TestMultiWriter tests writing to several writers.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	var text, js bytes.Buffer
	mw := NewMultiWriter(NewSimpleWriter(&text), NewJSONWriter(&js))

	n, err := mw.Write(newTestRecord())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != text.Len()+js.Len() {
		t.Errorf("n = %d, want %d", n, text.Len()+js.Len())
	}
	if text.Len() == 0 || js.Len() == 0 {
		t.Error("expected both writers to receive output")
	}
}
