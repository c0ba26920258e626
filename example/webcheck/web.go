package main

import (
	"bytes"
	"html/template"
	"io"
	"net/http"

	"github.com/xlab/phone"
)

// Checker serves a single page that parses and classifies a submitted
// number against a default region.
type Checker struct {
	util *phone.Util
}

func NewChecker(util *phone.Util) *Checker {
	return &Checker{util: util}
}

type result struct {
	Number string
	Region string

	Err         string
	CountryCode int
	NSN         string
	RegionCode  string
	Type        string
	Valid       bool
	Possible    string
}

func (c *Checker) check(number, region string) *result {
	res := &result{Number: number, Region: region}
	pn, err := c.util.Parse(number, region)
	if err != nil {
		res.Err = err.Error()
		return res
	}
	res.CountryCode = pn.CountryCode
	res.NSN = c.util.GetNationalSignificantNumber(pn)
	res.RegionCode = c.util.GetRegionCodeForNumber(pn)
	res.Type = c.util.GetNumberType(pn).String()
	res.Valid = c.util.IsValidNumber(pn)
	res.Possible = c.util.IsPossibleNumberWithReason(pn).String()
	return res
}

func (c *Checker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	data := struct {
		Regions []string
		Res     *result
	}{
		Regions: c.util.GetSupportedRegions(),
	}
	number := r.FormValue("number")
	region := r.FormValue("region")
	if number != "" {
		data.Res = c.check(number, region)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	io.Copy(w, &buf)
}

var tpl = template.Must(template.New("index.html").Parse(indexTpl))

const indexTpl = `<!DOCTYPE html>
<html lang="en">

<head>
    <meta charset="utf-8">
    <title>Phone number checker</title>
    <link rel="stylesheet" href="http://maxcdn.bootstrapcdn.com/bootstrap/3.2.0/css/bootstrap.min.css">
</head>

<body>
    <div class="container">
        <div class="page-header">
            <h3>Phone number checker</h3>
        </div>
        <form class="form-inline" method="GET">
            <input class="form-control" type="text" name="number" placeholder="+1 650 253 0000"
                {{ with .Res }}value="{{ .Number }}"{{ end }}>
            <select class="form-control" name="region">
                <option value="ZZ">-</option>
                {{ range .Regions }}<option>{{ . }}</option>{{ end }}
            </select>
            <button class="btn btn-primary" type="submit">Check</button>
        </form>
        {{ with .Res }}
        <hr>
        {{ if .Err }}
        <div class="alert alert-danger">{{ .Err }}</div>
        {{ else }}
        <table class="table">
            <tr><th>Country code</th><td>+{{ .CountryCode }}</td></tr>
            <tr><th>National significant number</th><td>{{ .NSN }}</td></tr>
            <tr><th>Region</th><td>{{ with .RegionCode }}{{ . }}{{ else }}-{{ end }}</td></tr>
            <tr><th>Type</th><td>{{ .Type }}</td></tr>
            <tr><th>Valid</th><td>{{ .Valid }}</td></tr>
            <tr><th>Possible</th><td>{{ .Possible }}</td></tr>
        </table>
        {{ end }}
        {{ end }}
    </div>
</body>

</html>
`
