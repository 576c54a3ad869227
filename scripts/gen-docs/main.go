package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"rolepolicies/cmd"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

var anchorLink = regexp.MustCompile(`\((\w+)#([\w-]+)\.md\)`)

func main() {
	docsDir := "./docs"
	if len(os.Args) > 1 {
		docsDir = os.Args[1]
	}

	n, err := generate(cmd.RootCmd, docsDir)
	if err != nil {
		logrus.WithField("dir", docsDir).Fatalf("Failed to generate documentation: %v", err)
	}
	fmt.Printf("✅ Documentation generated in %s (%d files)\n", docsDir, n)
}

// generate はルートをREADME.mdに、各トップレベルコマンドを<name>.mdに書き出し、ファイル数を返す
func generate(root *cobra.Command, docsDir string) (int, error) {
	// 既存のdocsディレクトリをクリーン
	if err := os.RemoveAll(docsDir); err != nil {
		return 0, err
	}
	if err := os.MkdirAll(docsDir, 0755); err != nil {
		return 0, err
	}

	if err := genSingleMarkdown(root, filepath.Join(docsDir, "README.md")); err != nil {
		return 0, fmt.Errorf("root: %w", err)
	}

	groups := groupCommands(root)
	for name, commands := range groups {
		filename := filepath.Join(docsDir, name+".md")
		if err := genGroupMarkdown(name, commands, filename); err != nil {
			return 0, fmt.Errorf("%s: %w", name, err)
		}
	}
	return len(groups) + 1, nil
}

// groupCommands はトップレベルコマンドごとに自身と子コマンドをまとめる
func groupCommands(root *cobra.Command) map[string][]*cobra.Command {
	groups := make(map[string][]*cobra.Command)
	for _, sub := range root.Commands() {
		if !sub.IsAvailableCommand() || sub.IsAdditionalHelpTopicCommand() {
			continue
		}
		groups[sub.Name()] = append(groups[sub.Name()], sub)
		for _, child := range sub.Commands() {
			if child.IsAvailableCommand() && !child.IsAdditionalHelpTopicCommand() {
				groups[sub.Name()] = append(groups[sub.Name()], child)
			}
		}
	}
	return groups
}

// shouldRemoveInheritedFlags は継承フラグを削除すべきかチェック
func shouldRemoveInheritedFlags(cmdName string) bool {
	return cmdName == "version"
}

// customLinkHandler はドキュメント内のリンクをカスタマイズ
//
//	rolepolicies               -> README
//	rolepolicies_role          -> role
//	rolepolicies_role_policies -> role#rolepolicies-role-policies
func customLinkHandler(name string) string {
	if name == cmd.AppName {
		return "README"
	}

	parts := strings.Split(name, "_")
	if len(parts) >= 2 && parts[0] == cmd.AppName {
		if len(parts) > 2 {
			return parts[1] + "#" + strings.ReplaceAll(name, "_", "-")
		}
		return parts[1]
	}
	return name
}

// genSingleMarkdown は単一のコマンドのドキュメントを生成
func genSingleMarkdown(c *cobra.Command, filename string) error {
	buf := new(bytes.Buffer)
	if err := doc.GenMarkdownCustom(c, buf, customLinkHandler); err != nil {
		return err
	}

	content := buf.String()
	if shouldRemoveInheritedFlags(c.Name()) {
		content = removeInheritedFlagsSection(content)
	}
	return os.WriteFile(filename, []byte(fixMarkdownLinks(content)), 0644)
}

// genGroupMarkdown はトップレベルコマンド配下の全コマンドを1つのファイルにまとめる
func genGroupMarkdown(name string, commands []*cobra.Command, filename string) error {
	var content strings.Builder

	fmt.Fprintf(&content, "# %s Commands\n\n", name)
	fmt.Fprintf(&content, "This document describes all `%s` related commands.\n\n", name)
	content.WriteString("## Table of Contents\n\n")
	for _, c := range commands {
		cmdPath := c.CommandPath()
		fmt.Fprintf(&content, "- [%s](#%s)\n", cmdPath, strings.ReplaceAll(cmdPath, " ", "-"))
	}
	content.WriteString("\n---\n\n")

	for _, c := range commands {
		buf := new(bytes.Buffer)
		if err := doc.GenMarkdownCustom(c, buf, customLinkHandler); err != nil {
			return fmt.Errorf("failed to generate markdown for %s: %w", c.CommandPath(), err)
		}

		cmdDoc := buf.String()
		if shouldRemoveInheritedFlags(name) ||
			(c.Parent() != nil && shouldRemoveInheritedFlags(c.Parent().Name())) {
			cmdDoc = removeInheritedFlagsSection(cmdDoc)
		}

		content.WriteString(fixMarkdownLinks(cmdDoc))
		content.WriteString("\n---\n\n")
	}

	return os.WriteFile(filename, []byte(content.String()), 0644)
}

// removeInheritedFlagsSection は継承フラグセクションを削除
func removeInheritedFlagsSection(content string) string {
	lines := strings.Split(content, "\n")
	result := []string{}
	inInherited := false

	for _, line := range lines {
		if strings.HasPrefix(line, "### Options inherited from parent commands") {
			inInherited = true
			continue
		}
		// 次のセクションに到達したら除外モードを解除
		if inInherited && (strings.HasPrefix(line, "### ") || strings.HasPrefix(line, "## ")) {
			inInherited = false
		}
		if !inInherited {
			result = append(result, line)
		}
	}
	return strings.Join(result, "\n")
}

// fixMarkdownLinks はMarkdown内のリンクを修正
func fixMarkdownLinks(content string) string {
	content = strings.ReplaceAll(content, "("+cmd.AppName+".md)", "(README.md)")
	// role#rolepolicies-role-policies.md -> role.md#rolepolicies-role-policies
	return anchorLink.ReplaceAllString(content, "($1.md#$2)")
}
