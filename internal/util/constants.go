package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

// 附件上传允许的 MIME 类型
var AllowedAttachmentTypes = []string{
	"image/",
	"application/pdf",
	"application/zip",
	"text/plain",
}
