//go:build !unix

package thumbs

func getCellSize() (cellW, cellH int) {
	return defaultCellW, defaultCellH
}
