package editor

import "strings"

// ParseFlavors делит строку по запятым и обрезает пробелы у каждого элемента.
// Пустая строка даёт срез из одного пустого элемента.
func ParseFlavors(raw string) []string {
	parts := strings.Split(raw, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
