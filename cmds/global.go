package cmds

import "os"

var GlobalExecutor = NewExecutor()

func Define(name string, command *Command) {
	GlobalExecutor.Define(name, command)
}

func Execute(args []string) error {
	return GlobalExecutor.Execute(args)
}

// ExecuteOSArgs executes the process arguments, skipping the program name
func ExecuteOSArgs() error {
	return GlobalExecutor.Execute(os.Args[1:])
}

func PrintUsage() {
	GlobalExecutor.PrintUsage()
}
