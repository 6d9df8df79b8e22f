package catalog

var (
	round  = Pair{Open: "(", Close: ")"}
	square = Pair{Open: "[", Close: "]"}
	curly  = Pair{Open: "{", Close: "}"}
	angle  = Pair{Open: "<", Close: ">"}
)

var cLike = []Pair{curly, square, round}

var defaultPairs = map[string][]Pair{
	"bash":       {curly, square, round},
	"c":          cLike,
	"cpp":        cLike,
	"csharp":     cLike,
	"css":        {curly, square, round},
	"go":         cLike,
	"html":       {{Open: "<!--", Close: "-->"}, angle, curly, round},
	"java":       cLike,
	"javascript": {curly, square, round, {Open: "${", Close: "}"}},
	"json":       {curly, square},
	"lua":        {curly, square, round},
	"markdown":   {curly, square, round},
	"pascal":     {{Open: "begin", Close: "end"}, square, round},
	"python":     {curly, square, round},
	"ruby":       {curly, square, round},
	"rust":       cLike,
	"sql":        {round, square},
	"typescript": {curly, square, round, {Open: "${", Close: "}"}},
	"yaml":       {curly, square},
}

var defaultAliases = map[string]string{
	"c++":        "cpp",
	"c#":         "csharp",
	"golang":     "go",
	"js":         "javascript",
	"md":         "markdown",
	"py":         "python",
	"rs":         "rust",
	"sh":         "bash",
	"shell":      "bash",
	"ts":         "typescript",
	"yml":        "yaml",
}
