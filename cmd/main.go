package main

import (
	"github.com/corray333/pos-core/internal/app"
	"github.com/corray333/pos-core/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
