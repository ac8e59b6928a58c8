package main

import (
	"os"

	"montage/cmd"
)

// @title        Montage API
// @version      1.0
// @description  视频时间轴合成服务：文档构建、时间轴合成、逐帧采样与导出
// @BasePath     /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
