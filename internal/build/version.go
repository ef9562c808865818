package build

var Commit string

var Version = "0.1.0"

func GetVersion() string {
	basicVersion := "v" + Version

	if Commit == "" {
		return basicVersion
	}

	return basicVersion + "-" + Commit
}
