//go:build unix && !darwin

package debug

const maxrssInKilobytes = true
