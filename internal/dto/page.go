package dto

// ── 门户页面视图模型 ──

// NewsItem 新闻列表条目
type NewsItem struct {
	ID            uint   `json:"id"`
	Title         string `json:"title"`
	Category      string `json:"category"`
	CategoryLabel string `json:"category_label"`
	Summary       string `json:"summary"`
	Author        string `json:"author"`
	PublishDate   string `json:"publish_date"`
	ViewsCount    int    `json:"views_count"`
}

// NewsFeed 首页新闻列表
type NewsFeed struct {
	Items      []NewsItem `json:"items"`
	Category   string     `json:"category"`
	Page       int        `json:"page"`
	TotalPages int        `json:"total_pages"`
	Total      int64      `json:"total"`
}

// HasPrev 是否有上一页
func (f *NewsFeed) HasPrev() bool { return f.Page > 1 }

// HasNext 是否有下一页
func (f *NewsFeed) HasNext() bool { return f.Page < f.TotalPages }

// DetailItem 详情页条目
type DetailItem struct {
	ID            uint
	Title         string
	Category      string
	CategoryLabel string
	Summary       string
	Content       string
	Author        string
	PublishDate   string
	ViewsCount    int
}

// RevenueLine 详情页收支明细行
type RevenueLine struct {
	Date        string
	Type        string
	TypeLabel   string
	Description string
	Party       string
	Amount      string
}

// DetailView 详情页
type DetailView struct {
	Item     DetailItem
	Revenues []RevenueLine
	Summary  *RevenueSummaryResponse
	IsSample bool
}

// EditItem 编辑页表单数据
type EditItem struct {
	ID       uint
	Title    string
	Category string
	Author   string
	Date     string
	Summary  string
	Content  string
	Status   string
}

// EditView 编辑页
type EditView struct {
	ItemID     uint
	Item       EditItem
	Categories []CategoryOption
	IsSample   bool
}

// CategoryOption 分类下拉选项
type CategoryOption struct {
	Value string
	Label string
}
