//go:build darwin

package debug

const maxrssInKilobytes = false
