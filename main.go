package main

import (
	"os"

	"github.com/oranginaround/bw-tui/cmd"
	"github.com/oranginaround/bw-tui/common"
	"github.com/oranginaround/bw-tui/pretty"
)

func ExitProtection() {
	status := recover()
	if status != nil {
		exit, ok := status.(common.ExitCode)
		if ok {
			exit.ShowMessage()
			common.WaitLogs()
			os.Exit(exit.Code)
		}
		common.WaitLogs()
		panic(status)
	}
	common.WaitLogs()
}

func main() {
	defer ExitProtection()
	pretty.Setup()
	cmd.Execute()
}
