package common

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
	"github.com/samber/lo"
)

// Matcher は名前がパターンに一致するかを判定する
type Matcher interface {
	Match(name string) bool
}

type substringMatcher string

func (m substringMatcher) Match(name string) bool {
	return strings.Contains(strings.ToLower(name), string(m))
}

// globMatcher はパターンと名前を小文字に揃えて比較する
type globMatcher struct {
	g glob.Glob
}

func (m globMatcher) Match(name string) bool {
	return m.g.Match(strings.ToLower(name))
}

// CompilePattern はワイルドカードを含む場合はglob形式、
// 含まない場合は部分一致のMatcherを返す。どちらも大文字小文字を区別しない。
func CompilePattern(pattern string) (Matcher, error) {
	if strings.ContainsAny(pattern, "*?[{") {
		g, err := glob.Compile(strings.ToLower(pattern))
		if err != nil {
			return nil, err
		}
		return globMatcher{g: g}, nil
	}
	return substringMatcher(strings.ToLower(pattern)), nil
}

// Filter はいずれかのパターンに名前が一致する要素だけを返す。
// パターンが無ければ全件を返す。入力スライスは変更しない。
func Filter[T any](items []T, patterns []string, name func(T) string) ([]T, error) {
	patterns = lo.Compact(lo.Uniq(patterns))
	if len(patterns) == 0 {
		return items, nil
	}

	matchers := make([]Matcher, 0, len(patterns))
	for _, p := range patterns {
		m, err := CompilePattern(p)
		if err != nil {
			return nil, err
		}
		matchers = append(matchers, m)
	}

	return lo.Filter(items, func(item T, _ int) bool {
		return lo.SomeBy(matchers, func(m Matcher) bool { return m.Match(name(item)) })
	}), nil
}

// ValidatePatterns はコンパイルできない最初のパターンをエラーとして返す
func ValidatePatterns(patterns []string) error {
	for _, p := range patterns {
		if p == "" {
			continue
		}
		if _, err := CompilePattern(p); err != nil {
			return fmt.Errorf("%s 不正なパターン %q: %w", ErrorIcon, p, err)
		}
	}
	return nil
}
