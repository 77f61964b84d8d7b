// Package model defines the form item data model shared by the codec, the
// editor state machine and every renderer. A FormItem carries an identifier
// plus a sparse mapping from slot number (1..13) to text; absent slots read as
// the empty string but remain distinguishable through Has so callers can tell
// "never edited" from "explicitly cleared". FieldOrder is the fixed
// permutation used when items are concatenated into a blob, and its inverse
// is computed once at package initialisation.
package model
