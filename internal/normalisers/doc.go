// Package normalisers holds the converters that turn raw API values into
// display text. Each subpackage handles one shape of data:
//
//   - adf: rich-text documents (descriptions, comments)
//   - fieldvalue: arbitrary issue field values
package normalisers
