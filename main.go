/*
 * Copyright (c) YugabyteDB, Inc.
 */

package main

import (
	"fmt"
	"os"

	"github.com/dataindataout/yb-day2ops/cmd"
	ybaAuthClient "github.com/dataindataout/yb-day2ops/internal/client"
)

func main() {
	b, err := os.ReadFile("version.txt")
	if err != nil {
		fmt.Print(err.Error() + "\n")
	}
	version := string(b)

	ybaAuthClient.SetVersion(version)
	cmd.Execute(version)
}
