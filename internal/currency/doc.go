// Package currency converts extracted price values into a target currency
// using a static exchange-rate table.
//
// All source prices are assumed to be in BaseCurrency (USD); there is no
// source-currency detection. The table is read-only after construction, and
// converted values are rounded deterministically to two decimals because they
// are displayed to the user as money.
package currency
