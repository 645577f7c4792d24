package service

import (
	"time"

	"community-portal/internal/model"
)

// sampleItemID 未指定 id 时 /detail 与 /edit 使用的默认条目
const sampleItemID uint = 1

// sampleItem 数据库中没有默认条目时渲染的演示内容
func sampleItem() *model.PublicInfo {
	summary := "本季度社区公共收益主要来源于停车场收费、公共区域广告和社区活动场地租赁等..."
	return &model.PublicInfo{
		ID:          sampleItemID,
		Title:       "社区公共收益第一季度公示报告发布",
		Category:    model.CategoryReport,
		Summary:     &summary,
		Content:     "尊敬的社区居民：为确保社区公共收益的透明化管理，社区管委会特此发布《社区公共收益第一季度公示报告》。本报告涵盖了2023年1月1日至2023年3月31日期间的全部收入与支出情况。详细财务明细已同步公示于社区公告栏及本系统的**收益公示**板块...",
		Author:      "社区管委会",
		PublishDate: time.Date(2023, 4, 15, 0, 0, 0, 0, time.Local),
		ViewsCount:  1258,
		Status:      model.InfoStatusPublished,
	}
}

// sampleEditSuffix 编辑页演示条目的标题后缀
const sampleEditSuffix = " (待修改)"
