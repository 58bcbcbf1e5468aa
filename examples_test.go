package subproc_test

import (
	"fmt"

	"github.com/olorin/subproc"
)

func ExampleCall() {
	res, err := subproc.Call(subproc.CaptureStdout, "echo", "hello world")
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	out, _ := res.StdoutText()
	fmt.Print(out)
	// Output: hello world
}

func ExampleInvoke() {
	spec := subproc.Cmd("sh").Arg("-c").Arg("echo out; echo err 1>&2").Build()

	res, err := subproc.Invoke(spec, subproc.CaptureBoth)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Printf("stdout: %s", res.Stdout)
	fmt.Printf("stderr: %s", res.Stderr)
	// Output:
	// stdout: out
	// stderr: err
}

func ExampleParse() {
	spec, err := subproc.Parse(`echo "hello world" from-afar`)
	if err != nil {
		fmt.Println("parse failed:", err)
		return
	}

	fmt.Println(spec.String())
	// Output: echo "hello world" from-afar
}

func ExampleRun() {
	if err := subproc.Run("true"); err != nil {
		fmt.Println("failed:", err)
		return
	}

	fmt.Println("ok")
	// Output: ok
}

func ExampleNewInvoker() {
	releases := subproc.NewInvoker(subproc.WithErrorMap(func(err error) error {
		return fmt.Errorf("release: %w", err)
	}))

	if err := releases.Run("false"); err != nil {
		fmt.Println(err)
	}
	// Output: release: command "false" exited with code 1
}
