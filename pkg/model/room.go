package model

type Room struct {
	Name     string `csv:"room"`
	Capacity int    `csv:"capacity"`
}
