package models

// CartItem 购物车行项目（JSON 快照结构，经状态镜像持久化）
// 合并键为 (ArtworkID, Size, Format)：同键再次加入只累加数量。
type CartItem struct {
	ArtworkID string `json:"artwork_id"`       // 作品标识（未知标识也接受，不做目录校验）
	Title     string `json:"title"`            // 标题快照
	Price     Money  `json:"price"`            // 单价快照
	Image     string `json:"image"`            // 图片快照
	Quantity  int    `json:"quantity"`         // 数量（始终 >= 1，<= 0 即删除）
	Size      string `json:"size,omitempty"`   // 可选尺寸
	Format    string `json:"format,omitempty"` // 可选装裱格式
}

// VariantKey 返回合并键
func (i CartItem) VariantKey() string {
	return i.ArtworkID + "\x00" + i.Size + "\x00" + i.Format
}

// ShippingInfo 收货信息
type ShippingInfo struct {
	FullName string `json:"full_name"` // 收件人姓名
	Email    string `json:"email"`     // 邮箱
	Phone    string `json:"phone"`     // 电话（至少 10 位）
	Address  string `json:"address"`   // 地址
	City     string `json:"city"`      // 城市
	State    string `json:"state"`     // 省/邦
	Pincode  string `json:"pincode"`   // 邮编
}
