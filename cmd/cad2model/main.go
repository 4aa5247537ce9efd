package main

import (
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/app"
	"github.com/seraghassouna/CAD2ETABSnSAP/internal/pkg"
)

var (
	GitCommit string
	BuildUUID string
	BuildDate string
	BuildTime string
)

func main() {
	pkg.InitLog()
	app.Main(app.BuildInfo{
		Commit: GitCommit,
		UUID:   BuildUUID,
		Date:   BuildDate,
		Time:   BuildTime,
	})
}
