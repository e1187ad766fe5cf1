// Package prompt читает ввод пользователя и печатает статусные строки.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

var (
	okColor   = color.New(color.FgGreen, color.Bold)
	warnColor = color.New(color.FgYellow)
	failColor = color.New(color.FgRed, color.Bold)

	stdin = bufio.NewReader(os.Stdin)
)

// Password читает пароль без эха. Если stdin не терминал (скрипты, пайпы),
// читается одна строка.
func Password(label string) (string, error) {
	fmt.Print(label)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("ошибка чтения пароля: %w", err)
		}
		return string(b), nil
	}
	line, err := readLine()
	if err != nil {
		return "", fmt.Errorf("ошибка чтения пароля: %w", err)
	}
	return line, nil
}

// NewPassword запрашивает пароль дважды
func NewPassword(label string) (string, error) {
	first, err := Password(label)
	if err != nil {
		return "", err
	}
	second, err := Password("Повторите пароль: ")
	if err != nil {
		return "", err
	}
	if first != second {
		return "", fmt.Errorf("пароли не совпадают")
	}
	return first, nil
}

// Line читает строку, пустой ввод заменяется значением по умолчанию
func Line(label, def string) (string, error) {
	if def != "" {
		fmt.Printf("%s [%s]: ", label, def)
	} else {
		fmt.Printf("%s: ", label)
	}
	line, err := readLine()
	if err != nil {
		return "", err
	}
	if line == "" {
		return def, nil
	}
	return line, nil
}

func readLine() (string, error) {
	line, err := stdin.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func OK(format string, args ...any) {
	okColor.Print("✓ ")
	fmt.Printf(format+"\n", args...)
}

func Warn(format string, args ...any) {
	warnColor.Printf("⚠️  "+format+"\n", args...)
}

func Fail(format string, args ...any) {
	failColor.Print("✗ ")
	fmt.Printf(format+"\n", args...)
}
