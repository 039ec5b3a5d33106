package format

// FirstFATSector builds the first sector of the single FAT copy written by
// format(): the reserved sentinel for cluster 1 in bytes 0..3, cluster 2
// pre-allocated as the one-cluster chain for the demo file in bytes 4..5,
// and zeros for every other entry.
func FirstFATSector() [512]byte {
	var buf [512]byte
	buf[0], buf[1], buf[2], buf[3] = 0xF8, 0xFF, 0xFF, 0xFF
	buf[4], buf[5] = 0xFF, 0xFF
	return buf
}

// ZeroFATSector is the image for every FAT sector after the first: entirely
// free clusters.
func ZeroFATSector() [512]byte {
	return [512]byte{}
}
