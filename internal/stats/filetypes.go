package stats

import "strings"

// descriptions maps a lowercase extension (without dot) to a display name.
var descriptions = map[string]string{
	// Images
	"jpg": "JPEG Image", "jpeg": "JPEG Image", "png": "PNG Image",
	"gif": "GIF Image", "bmp": "Bitmap Image", "svg": "SVG Image",
	"webp": "WebP Image", "ico": "Icon", "tiff": "TIFF Image",
	"heic": "HEIC Image", "raw": "RAW Image", "psd": "Photoshop Document",

	// Video
	"mp4": "MPEG-4 Video", "mkv": "Matroska Video", "avi": "AVI Video",
	"mov": "QuickTime Video", "wmv": "Windows Media Video",
	"webm": "WebM Video", "flv": "Flash Video", "m4v": "MPEG-4 Video",
	"mpg": "MPEG Video", "mpeg": "MPEG Video",

	// Audio
	"mp3": "MP3 Audio", "flac": "FLAC Audio", "wav": "Waveform Audio",
	"aac": "AAC Audio", "ogg": "Ogg Audio", "wma": "Windows Media Audio",
	"m4a": "MPEG-4 Audio", "opus": "Opus Audio", "mid": "MIDI Sequence",

	// Documents
	"pdf": "PDF Document", "doc": "Word Document", "docx": "Word Document",
	"xls": "Excel Spreadsheet", "xlsx": "Excel Spreadsheet",
	"ppt": "PowerPoint Presentation", "pptx": "PowerPoint Presentation",
	"odt": "OpenDocument Text", "rtf": "Rich Text Document",
	"txt": "Plain Text", "md": "Markdown Document", "csv": "CSV Data",
	"epub": "EPUB Book",

	// Code
	"go": "Go Source", "py": "Python Source", "js": "JavaScript Source",
	"ts": "TypeScript Source", "jsx": "React Source", "tsx": "React Source",
	"c": "C Source", "cpp": "C++ Source", "h": "C Header",
	"java": "Java Source", "kt": "Kotlin Source", "rs": "Rust Source",
	"rb": "Ruby Source", "php": "PHP Source", "cs": "C# Source",
	"swift": "Swift Source", "sh": "Shell Script", "ps1": "PowerShell Script",
	"html": "HTML Document", "css": "Stylesheet", "scss": "Stylesheet",
	"sql": "SQL Script", "json": "JSON Data", "xml": "XML Data",
	"yaml": "YAML Data", "yml": "YAML Data", "toml": "TOML Data",

	// Archives
	"zip": "ZIP Archive", "tar": "Tar Archive", "gz": "Gzip Archive",
	"bz2": "Bzip2 Archive", "xz": "XZ Archive", "rar": "RAR Archive",
	"7z": "7-Zip Archive", "iso": "Disk Image", "tgz": "Gzip Archive",
	"jar": "Java Archive",

	// Executables and installers
	"exe": "Windows Executable", "msi": "Windows Installer",
	"dll": "Windows Library", "app": "macOS Application",
	"dmg": "macOS Disk Image", "pkg": "macOS Installer",
	"deb": "Debian Package", "rpm": "RPM Package",
	"appimage": "Linux AppImage", "apk": "Android Package",
	"bat": "Batch Script", "com": "DOS Executable",
	"so": "Shared Library", "dylib": "Shared Library",
	"bin": "Binary File",

	// System
	"log": "Log File", "tmp": "Temporary File", "bak": "Backup File",
	"db": "Database File", "sqlite": "SQLite Database",
	"cache": "Cache File", "dat": "Data File", "ini": "Configuration",
	"cfg": "Configuration", "conf": "Configuration", "plist": "Property List",
	"sys": "System File", "lock": "Lock File",

	// Fonts
	"ttf": "TrueType Font", "otf": "OpenType Font", "woff": "Web Font",
	"woff2": "Web Font",

	NoExtension: "No Extension",
}

// Describe returns the human description for a lowercase extension,
// falling back to the uppercased extension itself when unknown.
func Describe(ext string) string {
	if d, ok := descriptions[ext]; ok {
		return d
	}
	return strings.ToUpper(ext)
}

// ExtensionOf derives the lowercase extension (without the dot) of a file
// name, or NoExtension when the name has none. A trailing dot counts as
// no extension.
func ExtensionOf(name string) string {
	for i := len(name) - 1; i >= 0; i-- {
		switch name[i] {
		case '.':
			if i == len(name)-1 {
				return NoExtension
			}
			return strings.ToLower(name[i+1:])
		case '/', '\\':
			return NoExtension
		}
	}
	return NoExtension
}
