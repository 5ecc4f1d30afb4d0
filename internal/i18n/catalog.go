package i18n

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"hela9_backend/internal/logger"
)

// Catalog - переводы, загруженные один раз при старте. Только чтение.
type Catalog struct {
	defaultLang string
	languages   []string
	messages    map[string]map[string]string
}

// Load читает <dir>/<lang>.json для каждого языка.
// Отсутствующий файл не ошибка: язык остается доступным и падает на язык по умолчанию.
func Load(dir string, languages []string, defaultLang string) (*Catalog, error) {
	c := &Catalog{
		defaultLang: defaultLang,
		languages:   append([]string(nil), languages...),
		messages:    make(map[string]map[string]string, len(languages)),
	}

	for _, lang := range languages {
		path := filepath.Join(dir, lang+".json")
		raw, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				logger.Warn("Translation file not found", "path", path)
				continue
			}
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var m map[string]string
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		c.messages[lang] = m
	}
	return c, nil
}

// New собирает каталог из готовых словарей.
func New(defaultLang string, messages map[string]map[string]string) *Catalog {
	c := &Catalog{defaultLang: defaultLang, messages: make(map[string]map[string]string, len(messages))}
	for lang, m := range messages {
		c.languages = append(c.languages, lang)
		c.messages[lang] = m
	}
	return c
}

func (c *Catalog) Supports(lang string) bool {
	for _, l := range c.languages {
		if l == lang {
			return true
		}
	}
	return false
}

func (c *Catalog) Languages() []string {
	return append([]string(nil), c.languages...)
}

func (c *Catalog) Default() string { return c.defaultLang }

// Resolve возвращает поддерживаемый язык или язык по умолчанию.
func (c *Catalog) Resolve(lang string) string {
	if lang != "" && c.Supports(lang) {
		return lang
	}
	return c.defaultLang
}

// T переводит ключ: язык, затем язык по умолчанию, затем сам ключ.
func (c *Catalog) T(lang, key string) string {
	if v, ok := c.messages[lang][key]; ok {
		return v
	}
	if v, ok := c.messages[c.defaultLang][key]; ok {
		return v
	}
	return key
}

// Messages - полный словарь для языка, дополненный языком по умолчанию.
func (c *Catalog) Messages(lang string) map[string]string {
	out := make(map[string]string, len(c.messages[c.defaultLang]))
	for k, v := range c.messages[c.defaultLang] {
		out[k] = v
	}
	for k, v := range c.messages[lang] {
		out[k] = v
	}
	return out
}
