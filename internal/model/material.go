package model

type MaterialKind string

const (
	MaterialVideo    MaterialKind = "video"
	MaterialDocument MaterialKind = "document"
)

// CourseMaterial 课程资料（讲义、录像等）
// swagger:model CourseMaterial
type CourseMaterial struct {
	UUIDBase
	CourseID     uint         `gorm:"index;not null;type:bigint unsigned" json:"courseId"`
	Title        string       `gorm:"size:255;not null" json:"title"`
	Kind         MaterialKind `gorm:"type:enum('video','document');default:'document'" json:"kind"`
	FileKey      string       `gorm:"size:255;not null" json:"fileKey"`
	URL          string       `gorm:"size:255" json:"url"`
	ThumbnailURL string       `gorm:"size:255" json:"thumbnailUrl,omitempty"`
	Duration     float64      `gorm:"default:0" json:"duration"` // 视频时长（秒）
	Size         int64        `gorm:"default:0" json:"size"`
	UploadedBy   uint         `gorm:"type:bigint unsigned" json:"uploadedBy"`
}

func (CourseMaterial) TableName() string {
	return "course_materials"
}
