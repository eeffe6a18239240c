package models

type Department struct {
	ID       string `yaml:"id" json:"id"`
	Name     string `yaml:"name" json:"name"`
	FullName string `yaml:"full_name" json:"full_name"`
	Icon     string `yaml:"icon" json:"icon"`
}

type Subject struct {
	ID         string `yaml:"id" json:"id"`
	Name       string `yaml:"name" json:"name"`
	Code       string `yaml:"code" json:"code"`
	Semester   int    `yaml:"semester" json:"semester"`
	Department string `yaml:"department" json:"department"`
}
