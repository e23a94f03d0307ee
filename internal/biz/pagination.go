package biz

// Ellipsis marks a collapsed gap in a pagination window. It is never a real page.
const Ellipsis = -1

// PaginationPages returns the page buttons to render for the given position.
// Up to seven pages are listed in full; beyond that the window keeps the first
// and last page plus the neighbourhood of the current one, separated by Ellipsis.
func PaginationPages(currentPage, totalPages int) []int {
	pages := make([]int, 0, 7)

	if totalPages <= 7 {
		for i := 1; i <= totalPages; i++ {
			pages = append(pages, i)
		}
		return pages
	}

	if currentPage <= 4 {
		for i := 1; i <= 5; i++ {
			pages = append(pages, i)
		}
		return append(pages, Ellipsis, totalPages)
	}

	if currentPage >= totalPages-3 {
		pages = append(pages, 1, Ellipsis)
		for i := totalPages - 4; i <= totalPages; i++ {
			pages = append(pages, i)
		}
		return pages
	}

	return append(pages, 1, Ellipsis, currentPage-1, currentPage, currentPage+1, Ellipsis, totalPages)
}

// IsValidPageChange reports whether navigating to target is worth a request.
func IsValidPageChange(target, currentPage, totalPages int) bool {
	return target >= 1 && target <= totalPages && target != currentPage
}
