package main

import (
	. "github.com/saylorsolutions/modmake"
)

const (
	symcryptVersion = "0.1.0"
)

func main() {
	b := NewBuild()
	b.Generate().DependsOnRunner("tidy", "", Go().ModTidy())

	symcrypt := NewAppBuild("symcrypt", "cmd/symcrypt", symcryptVersion)
	symcrypt.Build(func(gb *GoBuild) {
		gb.
			StripDebugSymbols().
			SetVariable("main", "version", symcryptVersion).
			CgoEnabled(false)
	})
	symcrypt.Variant("windows", "amd64")
	symcrypt.Variant("linux", "amd64")
	symcrypt.Variant("linux", "arm64")
	symcrypt.Variant("darwin", "amd64")
	symcrypt.Variant("darwin", "arm64")
	b.ImportApp(symcrypt)

	b.Execute()
}
