package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

// 学习模块标识，学习时长按模块分别累计
var StudyModules = map[string]bool{
	"s1": true,
	"s2": true,
	"s3": true,
}
