// Package tracking mints, validates and renders tracking codes.
//
// A tracking code is an all-digit string whose length and leading digit are
// fixed by its service class and whose last digit is a weighted mod-11 check
// digit. The package also computes the cosmetic data printed on shipping
// labels: the distance zone, the address routing code and the internal
// hub/belt routing code.
//
// Everything here is a pure function or a Generator whose only state is its
// random source, so it is safe for concurrent use.
package tracking
