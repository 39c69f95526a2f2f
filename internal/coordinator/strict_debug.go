//go:build rosterdebug

package coordinator

const strictInvariants = true
