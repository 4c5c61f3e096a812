// Package main 启动 keepsake 服务.
package main

import (
	"os"

	"github.com/yeisme/keepsake/pkg/cmd"
)

//	@title			Keepsake API
//	@version		1.0
//	@description	宝宝周岁纪念站点后端：家人投稿与审核、成长时间线、祝福墙、语音留言和写给未来的信。

//	@license.name	MIT
//	@license.url	https://opensource.org/license/mit/

//	@contact.name	yeisme

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
