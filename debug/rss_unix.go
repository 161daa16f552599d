//go:build unix

package debug

import "golang.org/x/sys/unix"

// residentSetSize returns the peak resident set size in bytes. getrusage
// reports kilobytes on Linux and bytes on Darwin.
func residentSetSize() (uint64, error) {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return 0, err
	}
	rss := uint64(ru.Maxrss)
	if maxrssInKilobytes {
		rss *= 1024
	}
	return rss, nil
}
