// Package microbemap maps microbiome strain abundances onto taxonomic groups
// and paints the aggregated abundance over an anatomical template image.
//
// The root package only carries the small I/O helpers that every subpackage
// shares: local or gs:// files, compressed input, delimiter detection and ~
// expansion. The real work lives in taxa, strains, taxindex, abundance and
// overlay.
package microbemap
