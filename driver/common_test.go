// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package driver_test

import (
	"log"

	"github.com/gviegas/ares/driver"
	_ "github.com/gviegas/ares/driver/trace"
)

var (
	drv driver.Driver
	gpu driver.GPU
)

// The tests in this package run against the trace
// driver, which is always available.
func init() {
	drivers := driver.Drivers()
	for i := range drivers {
		if drivers[i].Name() == "trace" {
			drv = drivers[i]
			break
		}
	}
	if drv == nil {
		log.Fatal("driver.Drivers(): driver not found")
	}
	var err error
	gpu, err = drv.Open()
	if err != nil {
		log.Fatal(err)
	}
}
