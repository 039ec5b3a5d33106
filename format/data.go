package format

import "github.com/embeddedfat/fat16core/geometry"

// DemoDataSector builds the image for the data sector backing the demo
// file's single cluster: the content bytes followed by zero padding.
func DemoDataSector() [512]byte {
	var buf [512]byte
	copy(buf[:], geometry.RootFileContent)
	return buf
}
