package javawrap

import (
	"regexp"
	"strings"
)

// Program is a sketch split into the parts the class template needs.
type Program struct {
	// Imports holds the sketch's own import statements, hoisted out of the
	// body.
	Imports []string

	// Body is the sketch code with imports and settings calls removed.
	Body string

	// Settings holds calls that PApplet only accepts inside settings().
	Settings []string

	// Static reports a sketch without top-level method declarations. Its
	// body runs once inside setup().
	Static bool
}

var (
	importPattern   = regexp.MustCompile(`^import\s+(?:static\s+)?[\w.]+(?:\.\*)?\s*;$`)
	methodPattern   = regexp.MustCompile(`^\s*(?:(?:public|private|protected|static|final|abstract|synchronized)\s+)*([A-Za-z_][\w.]*)(?:\s*<[^>]*>)?(?:\s*\[\s*\])*\s+([A-Za-z_]\w*)\s*\(`)
	callbackPattern = regexp.MustCompile(`^(\s*)void\s+(setup|draw|settings|mousePressed|mouseReleased|mouseClicked|mouseMoved|mouseDragged|mouseWheel|mouseEntered|mouseExited|keyPressed|keyReleased|keyTyped)\s*\(`)
	settingsPattern = regexp.MustCompile(`^(?:size|fullScreen|smooth|noSmooth|pixelDensity)\s*\(.*\)\s*;\s*(?://.*)?$`)
)

var notTypes = map[string]bool{
	"return": true, "new": true, "else": true, "throw": true, "case": true, "do": true, "class": true,
}

var notNames = map[string]bool{
	"if": true, "while": true, "for": true, "switch": true, "catch": true, "synchronized": true,
}

// Translate scans source and splits it into a Program. Syntax problems are
// returned as *preprocess.TranslationError.
func Translate(name, source string) (Program, error) {
	scanned, err := scan(name, source)
	if err != nil {
		return Program{}, err
	}

	rawLines := strings.Split(scanned.text, "\n")
	type codeLine struct {
		text string
		info lineInfo
	}

	var (
		prog    Program
		body    []codeLine
		methods = map[string]bool{}
	)
	for i, text := range rawLines {
		info := scanned.lines[i]
		if info.depth == 0 && info.inCode {
			trimmed := strings.TrimSpace(text)
			if importPattern.MatchString(trimmed) {
				prog.Imports = append(prog.Imports, trimmed)
				continue
			}
			if method, ok := methodName(text); ok {
				methods[method] = true
			}
		}
		body = append(body, codeLine{text: text, info: info})
	}
	prog.Static = len(methods) == 0

	var (
		kept    []string
		current string
	)
	for _, line := range body {
		trimmed := strings.TrimSpace(line.text)
		if line.info.inCode && line.info.depth == 0 {
			if method, ok := methodName(line.text); ok {
				current = method
			}
		}

		if line.info.inCode && !methods["settings"] && settingsPattern.MatchString(trimmed) {
			topLevel := prog.Static && line.info.depth == 0
			inSetup := !prog.Static && line.info.depth == 1 && current == "setup"
			if topLevel || inSetup {
				prog.Settings = append(prog.Settings, trimmed)
				continue
			}
		}

		text := line.text
		if !prog.Static && line.info.inCode && line.info.depth == 0 {
			text = callbackPattern.ReplaceAllString(text, "${1}public void ${2}(")
		}
		kept = append(kept, text)
	}

	prog.Body = trimBlankLines(kept)
	return prog, nil
}

func methodName(line string) (string, bool) {
	match := methodPattern.FindStringSubmatch(line)
	if match == nil || notTypes[match[1]] || notNames[match[2]] {
		return "", false
	}
	if strings.HasSuffix(strings.TrimSpace(line), ";") {
		return "", false
	}
	return match[2], true
}

func trimBlankLines(lines []string) string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}
