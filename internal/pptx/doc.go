// Package pptx writes PresentationML (.pptx) slide decks.
//
// A Deck holds title slides and title-and-content slides whose body is a
// list of paragraphs made of styled runs. Bytes packages the deck into a
// complete OOXML zip: content types, relationships, document properties,
// one slide master with two layouts, one theme and the slides.
//
// Design decision: Output is byte-stable. Zip entries are written in a
// fixed order with a fixed modification time, and document properties use
// the deck's configured date instead of the wall clock, so the same deck
// always encodes to the same bytes.
package pptx
