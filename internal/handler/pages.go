package handler

import "html/template"

// playgroundTemplate — страница GraphQL Playground. Значения Endpoint и
// Headers сериализуются контекстным экранированием html/template.
var playgroundTemplate = template.Must(template.New("playground").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8"/>
  <meta name="viewport" content="width=device-width, initial-scale=1"/>
  <title>GraphQL Playground</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/graphql-playground-react/build/static/css/index.css"/>
  <script src="https://cdn.jsdelivr.net/npm/graphql-playground-react/build/static/js/middleware.js"></script>
</head>
<body>
  <div id="root"></div>
  <script>
    window.addEventListener('load', function () {
      GraphQLPlayground.init(document.getElementById('root'), {
        endpoint: {{.Endpoint}},
        headers: {{.Headers}}
      });
    });
  </script>
</body>
</html>
`))

const loginPageHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8"/>
  <title>Login</title>
</head>
<body>
  <h1>Sign in</h1>
  <form method="post" action="/playground-login">
    <label>Email <input type="text" name="username" autocomplete="username"/></label>
    <label>Password <input type="password" name="password" autocomplete="current-password"/></label>
    <button type="submit">Log in</button>
  </form>
</body>
</html>
`
