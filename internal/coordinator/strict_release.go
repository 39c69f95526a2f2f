//go:build !rosterdebug

package coordinator

const strictInvariants = false
