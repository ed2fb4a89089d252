// Package config provides configuration structures and utilities for
// volsreport. It defines where the dataset is read from, where the
// documents are written, the wording that is not part of the dataset, and
// which optional outputs are produced.
package config
