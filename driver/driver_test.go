// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package driver_test

import (
	"testing"

	"github.com/gviegas/ares/driver"
)

func TestDrivers(t *testing.T) {
	drivers := driver.Drivers()
	for i := range drivers {
		name := drivers[i].Name()
		for j := range i {
			if name == drivers[j].Name() {
				t.Error("driver.Drivers: Driver.Name is not unique")
			}
		}
	}
	drivers2 := driver.Drivers()
	if len(drivers) != len(drivers2) {
		t.Error("driver.Drivers: length mismatch")
	} else {
		for i := range drivers {
			if drivers[i].Name() != drivers2[i].Name() {
				t.Error("driver.Drivers: Driver.Name mismatch")
			}
		}
	}
}

func TestDriverName(t *testing.T) {
	name := drv.Name()
	if name == "" {
		t.Error("Driver.Name: name is empty")
	}
	drv.Close()
	if drv.Name() != name {
		t.Error("Driver.Name: unexpected name after call to Close")
	}
	_, err := drv.Open()
	if err != nil {
		t.Fatal("Failed to re-Open drv - cannot continue")
	}
	if drv.Name() != name {
		t.Error("Driver.Name: unexpected name after call to Open")
	}
}

type fakeDriver struct{ id int }

func (*fakeDriver) Open() (driver.GPU, error) { return nil, driver.ErrNoDevice }
func (*fakeDriver) Name() string { return "fake" }
func (*fakeDriver) Close() {}

func TestRegister(t *testing.T) {
	find := func() driver.Driver {
		for _, d := range driver.Drivers() {
			if d.Name() == "fake" {
				return d
			}
		}
		return nil
	}
	n := len(driver.Drivers())
	d1 := &fakeDriver{1}
	driver.Register(d1)
	if have := len(driver.Drivers()); have != n+1 {
		t.Fatalf("driver.Register: len(driver.Drivers())\nhave %d\nwant %d", have, n+1)
	}
	if find() != d1 {
		t.Fatal("driver.Register: driver not registered")
	}
	d2 := &fakeDriver{2}
	driver.Register(d2)
	if have := len(driver.Drivers()); have != n+1 {
		t.Fatalf("driver.Register: len(driver.Drivers()) after replacement\nhave %d\nwant %d", have, n+1)
	}
	if find() != d2 {
		t.Fatal("driver.Register: driver not replaced")
	}
}
