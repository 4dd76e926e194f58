package main

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// bookFactory 生成随机图书
// 同一个factory生成的ISBN互不重复
type bookFactory struct {
	rnd      *rand.Rand
	thisYear int
	isbns    map[string]struct{}
}

func newBookFactory(rnd *rand.Rand, thisYear int) *bookFactory {
	return &bookFactory{
		rnd:      rnd,
		thisYear: thisYear,
		isbns:    make(map[string]struct{}),
	}
}

var (
	words = []string{
		"adventure", "mystery", "journey", "discovery", "secrets", "dreams", "hope",
		"river", "war", "peace", "science", "nature", "machine", "history", "future",
		"silent", "garden", "empire", "wisdom", "life", "shadow", "light", "winter",
		"world", "ocean", "time", "space", "mind", "soul", "city", "stone", "fire",
	}
	firstNames = []string{
		"Ada", "Alan", "Barbara", "Donald", "Edsger", "Frances", "Grace", "John",
		"Ken", "Leslie", "Margaret", "Niklaus", "Radia", "Robert", "Sophie", "Tony",
	}
	lastNames = []string{
		"Allen", "Backus", "Dijkstra", "Hamilton", "Hopper", "Kay", "Knuth", "Lamport",
		"Liskov", "Lovelace", "Martin", "Perlman", "Pike", "Thompson", "Turing", "Wirth",
	}
)

// Next 生成一本图书的创建参数
// 字段范围与接口校验规则一致：出版年份在[1980, 今年]，大约一半没有简介
func (f *bookFactory) Next() book.Attributes {
	attrs := book.Attributes{
		Title:         f.title(),
		Author:        f.pick(firstNames) + " " + f.pick(lastNames),
		PublishedYear: 1980 + f.rnd.IntN(f.thisYear-1980+1),
		ISBN:          f.uniqueISBN(),
	}
	if f.rnd.IntN(2) == 0 {
		desc := f.paragraph()
		attrs.Description = &desc
	}
	return attrs
}

func (f *bookFactory) pick(list []string) string {
	return list[f.rnd.IntN(len(list))]
}

func (f *bookFactory) title() string {
	parts := make([]string, 3)
	for i := range parts {
		w := f.pick(words)
		parts[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(parts, " ")
}

func (f *bookFactory) paragraph() string {
	sentences := make([]string, 2+f.rnd.IntN(3))
	for i := range sentences {
		n := 5 + f.rnd.IntN(6)
		ws := make([]string, n)
		for j := range ws {
			ws[j] = f.pick(words)
		}
		s := strings.Join(ws, " ")
		sentences[i] = strings.ToUpper(s[:1]) + s[1:] + "."
	}
	return strings.Join(sentences, " ")
}

func (f *bookFactory) uniqueISBN() string {
	for {
		isbn := f.isbn13()
		if _, ok := f.isbns[isbn]; !ok {
			f.isbns[isbn] = struct{}{}
			return isbn
		}
	}
}

// isbn13 978前缀 + 9位随机数 + 校验位
func (f *bookFactory) isbn13() string {
	digits := fmt.Sprintf("978%09d", f.rnd.IntN(1_000_000_000))
	return digits + string(rune('0'+isbnCheckDigit(digits)))
}

// isbnCheckDigit ISBN-13校验位：奇数位权重1，偶数位权重3
func isbnCheckDigit(first12 string) int {
	sum := 0
	for i, r := range first12 {
		d := int(r - '0')
		if i%2 == 1 {
			d *= 3
		}
		sum += d
	}
	return (10 - sum%10) % 10
}
