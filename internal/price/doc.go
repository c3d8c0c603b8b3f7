// Package price extracts numeric price candidates from raw OCR word text.
//
// OCR word output is arbitrary: whitespace, currency symbols, and partial
// garbage from misreads are all expected. The extractor locates the leftmost
// substring shaped like a price (optional $/£/€ symbol, optional whitespace,
// digits, optional 1-2 digit fraction with '.' or ',' separator) and parses
// just the numeric part into a float64. Words without such a substring are
// non-matches, not errors.
package price
