// Package accessory implements the accessory tools and the response-shaping
// pipeline they share:
//
//	ListAccessories -> ApplyFilters -> smart defaults -> Paginate -> Assemble -> size guard
//
// Filtering is pure: every function returns a new slice and never modifies
// the snapshot fetched from the hub. The snapshot is fetched fresh for every
// call; nothing is cached between requests.
package accessory
