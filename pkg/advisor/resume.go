package advisor

// ParsedResume 表示一次简历解析的结构化结果快照。
type ParsedResume struct {
	Skills     []string `json:"skills"`
	Experience []string `json:"experience"`
	Education  []string `json:"education"`
	Summary    string   `json:"summary"`
}

// ParseResume 对简历内容进行解析。
// 当前为占位实现：无论文件内容如何，都返回固定的结构化结果。
func ParseResume(fileName, fileType string) ParsedResume {
	return ParsedResume{
		Skills:     []string{"JavaScript", "React", "Node.js", "Python"},
		Experience: []string{"Software Developer at Tech Corp (2020-2023)", "Intern at StartupXYZ (2019-2020)"},
		Education:  []string{"Bachelor's in Computer Science - University ABC (2019)"},
		Summary:    "Experienced software developer with expertise in web technologies",
	}
}
