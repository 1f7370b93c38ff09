// Command caddie prints wind-adjusted tips, conditions and compass readings
// for the configured course.
//
// Usage:
//
//	caddie tips --hole 7 [--bearing 85] [--driver 250] [--iron 160] [--next]
//	caddie weather [--next]
//	caddie course
//	caddie compass --heading 90 --wind-from 270
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
