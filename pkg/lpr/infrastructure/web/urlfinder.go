package web

import "github.com/mvdan/xurls"

type URLFinder struct{}

func NewURLFinder() *URLFinder {
	return &URLFinder{}
}

// FindURLs finds URLs with an explicit scheme (http://, https://, ...). Bare file names such as "car.jpg" would match
// a relaxed search, so it's not used here.
func (u *URLFinder) FindURLs(str string) []string {
	return xurls.Strict.FindAllString(str, -1)
}
