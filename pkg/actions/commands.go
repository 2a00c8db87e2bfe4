package actions

// Windows copy goes through xcopy; move, del and rmdir are cmd builtins
// and have to be started through the command interpreter.

func (e *Executor) transferCommand(kind Kind, path, destDir string) (string, []string) {
	if e.goos == "windows" {
		if kind == KindCopy {
			return "xcopy", []string{"/e", "/i", "/y", path, destDir + `\`}
		}
		return "cmd", []string{"/c", "move", "/y", path, destDir}
	}

	if kind == KindCopy {
		return "cp", []string{"-r", path, destDir}
	}
	return "mv", []string{path, destDir}
}

func (e *Executor) deleteCommand(path string) (string, []string) {
	if e.goos == "windows" {
		if info, err := e.fs.Lstat(path); err == nil && info.IsDir() {
			return "cmd", []string{"/c", "rmdir", "/s", "/q", path}
		}
		return "cmd", []string{"/c", "del", "/f", "/q", path}
	}

	return "rm", []string{"-rf", path}
}
