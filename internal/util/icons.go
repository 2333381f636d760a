package util

import "strings"

// ExtIcon returns a Unicode icon for a lowercase extension without dot.
func ExtIcon(ext string) string {
	if icon, ok := extIcons[ext]; ok {
		return icon
	}
	return "📄"
}

// DirIcon returns an icon for a directory name.
func DirIcon(name string) string {
	if icon, ok := dirIcons[strings.ToLower(name)]; ok {
		return icon
	}
	return "📁"
}

var dirIcons = map[string]string{
	".git":         "🔀",
	"node_modules": "📦",
	"vendor":       "📦",
	"dist":         "📤",
	"build":        "🔨",
	"target":       "🎯",
	"src":          "💻",
	"lib":          "📚",
	"test":         "🧪",
	"tests":        "🧪",
	"docs":         "📝",
	"doc":          "📝",
	"config":       "⚙️",
	"bin":          "⚡",
	"tmp":          "🕐",
	"cache":        "💾",
	".cache":       "💾",
	"assets":       "🎨",
	"public":       "🌐",
	"static":       "🌐",
	"images":       "🖼️",
	"img":          "🖼️",
}

var extIcons = map[string]string{
	// Code
	"go":     "🐹",
	"py":     "🐍",
	"js":     "🟨",
	"ts":     "🔷",
	"jsx":    "⚛️",
	"tsx":    "⚛️",
	"rs":     "🦀",
	"c":      "🔵",
	"cpp":    "🔵",
	"java":   "☕",
	"rb":     "💎",
	"swift":  "🐦",
	"kt":     "🟣",
	"php":    "🐘",
	"html":   "🌐",
	"css":    "🎨",
	"scss":   "🎨",
	"vue":    "💚",
	"svelte": "🔥",

	// Data
	"json": "📋",
	"yaml": "📋",
	"yml":  "📋",
	"toml": "📋",
	"xml":  "📋",
	"csv":  "📊",
	"sql":  "🗃️",

	// Documents
	"md":   "📝",
	"txt":  "📄",
	"pdf":  "📕",
	"doc":  "📘",
	"docx": "📘",
	"xls":  "📗",
	"xlsx": "📗",

	// Media
	"mp4":  "🎬",
	"mkv":  "🎬",
	"avi":  "🎬",
	"mov":  "🎬",
	"mp3":  "🎵",
	"flac": "🎵",
	"wav":  "🎵",
	"ogg":  "🎵",
	"jpg":  "🖼️",
	"jpeg": "🖼️",
	"png":  "🖼️",
	"gif":  "🖼️",
	"svg":  "🖼️",
	"webp": "🖼️",

	// Archives
	"zip": "📦",
	"tar": "📦",
	"gz":  "📦",
	"rar": "📦",
	"7z":  "📦",
	"iso": "💿",
	"dmg": "💿",

	// System
	"log":  "📜",
	"lock": "🔒",
	"env":  "🔐",
	"db":   "🗄️",

	// Executables
	"exe":  "⚡",
	"bin":  "⚡",
	"sh":   "🐚",
	"bash": "🐚",
	"zsh":  "🐚",
}
