package view

var pages = map[string]string{
	Signup: `<!DOCTYPE html>
<html><body>
Sign Up
<form action="/submitUser" method="post">
<input name="name" type="text" placeholder="name">
<input name="email" type="email" placeholder="email">
<input name="password" type="password" placeholder="password">
<button>Submit</button>
</form>
</body></html>`,

	Login: `<!DOCTYPE html>
<html><body>
log in
<form action="/loggingin" method="post">
<input name="email" type="email" placeholder="email">
<input name="password" type="password" placeholder="password">
<button>Submit</button>
</form>
</body></html>`,

	Registered: `<!DOCTYPE html>
<html><body>
Successfully Created User
<form action="/member" method="get"><button type="submit">Member</button></form>
<form action="/logout" method="get"><button type="submit">Log Out</button></form>
</body></html>`,

	Welcome: `<!DOCTYPE html>
<html><body>
Welcome {{.Name}}!
<form action="/member" method="get"><button type="submit">Member</button></form>
<form action="/logout" method="get"><button type="submit">Log Out</button></form>
</body></html>`,

	Catalog: `<!DOCTYPE html>
<html><body>
Welcome
<form action="/createUser" method="get"><button type="submit">Sign Up</button></form>
<form action="/login" method="get"><button type="submit">Login</button></form>
<form action="/search" method="post">
<input name="search" id="searchbar" type="search" placeholder="Search" aria-label="Search" value="{{.Search}}">
<button>Submit</button>
</form>
<h1>List of Exercises</h1>
<ul>
{{- range .Exercises}}
<li id="{{.Name}}">
<a href="/{{.ID}}">
<h3>{{.Name}}</h3>
{{- if .Image}}<img src="{{.Image}}" alt="{{.Name}}">{{end}}
<p>{{.Instructions}}</p>
</a>
</li>
{{- end}}
</ul>
<div>
Pages: {{range $i, $p := .Pages}}{{if $i}} | {{end}}<a href="{{$p.URL}}"{{if $p.Active}} class="active"{{end}}>{{$p.Number}}</a>{{end}}
</div>
</body></html>`,

	Exercise: `<!DOCTYPE html>
<html><body>
<ul>
{{- range .Exercises}}
<h3>{{.Name}}</h3>
{{- if .Image}}<img src="{{.Image}}" alt="{{.Name}}">{{end}}
<p>level: {{.Level}}, equipment: {{.Equipment}}</p>
<p>muscles: {{.Muscles}}</p>
<p>{{.Instructions}}</p>
{{- end}}
</ul>
</body></html>`,
}
