package main

import "github.com/waynewangyuxuan/Prelude-Zero/cmd"

func main() {
	cmd.Execute()
}
