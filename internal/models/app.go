// ABOUTME: Application table mapping spoken names to launch commands
// ABOUTME: Ordered so that equal-length key ties resolve deterministically
package models

// App maps a spoken application name to the command the launcher runs
type App struct {
	Key     string `json:"key" yaml:"key" mapstructure:"key"`
	Command string `json:"command" yaml:"command" mapstructure:"command"`
}

// DefaultApps is the built-in application table. Keys are lower-case.
var DefaultApps = []App{
	{Key: "блокнот", Command: "notepad"},
	{Key: "notepad", Command: "notepad"},
	{Key: "калькулятор", Command: "calc"},
	{Key: "calc", Command: "calc"},
	{Key: "проводник", Command: "explorer"},
	{Key: "explorer", Command: "explorer"},
	{Key: "проводник файлов", Command: "explorer"},
	{Key: "браузер", Command: "chrome"},
	{Key: "chrome", Command: "chrome"},
	{Key: "гугл хром", Command: "chrome"},
	{Key: "хром", Command: "chrome"},
	{Key: "edge", Command: "msedge"},
	{Key: "эдж", Command: "msedge"},
	{Key: "firefox", Command: "firefox"},
	{Key: "файрфокс", Command: "firefox"},
	{Key: "диспетчер задач", Command: "taskmgr"},
	{Key: "диспетчер", Command: "taskmgr"},
	{Key: "настройки", Command: "ms-settings:"},
	{Key: "параметры", Command: "ms-settings:"},
}

// AppKeys returns the keys of apps in table order
func AppKeys(apps []App) []string {
	keys := make([]string, len(apps))
	for i, a := range apps {
		keys[i] = a.Key
	}
	return keys
}
