// Command petctl administra el registro de mascotas directamente sobre el
// archivo CSV, sin pasar por la API.
//
//	petctl --file pets.csv list
//	petctl add --id 2 --name Mia --species Cat --age 12 --gender F --weight 4 --description shy
//	petctl update 1 --weight 16
//	petctl remove 2
//	petctl export backup.csv
//	petctl import backup.csv --mode merge
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
