package main

import (
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/golang/glog"
)

// startStatsView serves runtime charts at http://<addr>/debug/statsview and
// pprof at /debug/pprof/.
func startStatsView(addr string) {
	go func() {
		viewer.SetConfiguration(viewer.WithAddr(addr))
		mgr := statsview.New()
		mgr.Start()
	}()
	glog.Infof("stats server available at http://%s/debug/statsview", addr)
}
