package httpserver

import "html/template"

// The three HTML pages the gate serves: a bare index, the password form, and
// the landing page that auto-triggers the byte transfer as a second,
// credential-free GET.

var (
	indexTemplate   = template.Must(template.New("index").Parse(indexHTML))
	formTemplate    = template.Must(template.New("form").Parse(formHTML))
	landingTemplate = template.Must(template.New("landing").Parse(landingHTML))
)

type indexData struct {
	SiteName string
}

type formData struct {
	SiteName string
	LogoURL  string
	Action   string
	Message  string
}

type landingData struct {
	SiteName    string
	LogoURL     string
	Filename    string
	DownloadURL string
}

const indexHTML = `<html><body><h3>{{.SiteName}} protected downloads</h3><p>Specify a file in the URL.</p></body></html>`

const formHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>Password required</title>
  <meta name="viewport" content="width=device-width,initial-scale=1" />
  <style>
    body { font-family: system-ui, -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif; background:#f5f5f5; display:flex; align-items:center; justify-content:center; min-height:100vh; padding:1rem; }
    .box { background:white; padding:2rem 1.75rem; border-radius:0.75rem; box-shadow:0 10px 30px rgba(0,0,0,.06); width: min(400px, 100% - 2rem); }
    .logo { max-width:150px; height:auto; margin:0 auto 1.5rem; display:block; }
    h1 { font-size:1.3rem; margin-bottom:.5rem; text-align:center; color:#333; }
    p.msg { color:#b00020; margin-bottom:.75rem; text-align:center; }
    label { display:block; font-size:.85rem; margin-bottom:.35rem; margin-top:.75rem; font-weight:500; }
    input[type=password], input[type=email] { width:100%; padding:.6rem .75rem; border:1px solid #ddd; border-radius: .5rem; font-size:.95rem; box-sizing: border-box; }
    input:focus { outline: none; border-color: #FFC72C; box-shadow: 0 0 0 3px rgba(255,199,44,0.1); }
    button { margin-top:1rem; width:100%; background:#FFC72C; color:#222; border:none; padding:.65rem; border-radius:.5rem; font-weight:600; cursor:pointer; font-size:.95rem; transition:all 0.2s; }
    button:hover { background:#ffd740; transform:translateY(-1px); box-shadow:0 2px 8px rgba(255,199,44,0.3); }
    small { display:block; margin-top:1rem; color:#888; font-size:.75rem; text-align:center; line-height:1.4; }
  </style>
</head>
<body>
  <form class="box" method="POST" action="{{.Action}}">
    {{if .LogoURL}}<img src="{{.LogoURL}}" alt="{{.SiteName}}" class="logo" onerror="this.style.display='none'">{{end}}
    <h1>Protected Download</h1>
    {{if .Message}}<p class="msg">{{.Message}}</p>{{end}}
    <label for="email">Email Address</label>
    <input name="email" id="email" type="email" placeholder="your@email.com" required autofocus />
    <label for="password">Password</label>
    <input name="password" id="password" type="password" placeholder="From your email" required />
    <button type="submit">Download</button>
    <small>This link is protected. Enter your email and the password we sent you.</small>
  </form>
</body>
</html>`

const landingHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>Download Started</title>
  <meta name="viewport" content="width=device-width,initial-scale=1" />
  <style>
    body { font-family: system-ui, -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif; background:#f5f5f5; display:flex; align-items:center; justify-content:center; min-height:100vh; margin:0; padding:1rem; }
    .box { background:white; padding:2.5rem 2rem; border-radius:0.75rem; box-shadow:0 10px 30px rgba(0,0,0,.06); width: min(480px, 100% - 2rem); text-align:center; }
    .logo { max-width:180px; height:auto; margin:0 auto 1.5rem; display:block; }
    h1 { font-size:1.75rem; margin:0 0 0.5rem 0; color:#333; font-weight:700; }
    .icon { font-size:3rem; margin-bottom:1rem; }
    p { color:#666; margin:0.5rem 0; line-height:1.6; }
    .filename { font-weight:600; color:#333; word-break:break-all; background:#f8f9fa; padding:0.5rem 1rem; border-radius:0.5rem; display:inline-block; margin:1rem 0; }
    a { display:inline-block; margin-top:1.5rem; padding:.75rem 1.5rem; background:#FFC72C; color:#222; text-decoration:none; border-radius:.5rem; font-weight:600; transition:all 0.2s; box-shadow:0 2px 8px rgba(255,199,44,0.3); }
    a:hover { background:#ffd740; transform:translateY(-1px); box-shadow:0 4px 12px rgba(255,199,44,0.4); }
    .loading { display:inline-block; width:1rem; height:1rem; border:2px solid #FFC72C; border-top-color:transparent; border-radius:50%; animation:spin 0.8s linear infinite; margin-right:0.5rem; vertical-align:middle; }
    @keyframes spin { to { transform:rotate(360deg); } }
  </style>
</head>
<body>
  <div class="box">
    {{if .LogoURL}}<img src="{{.LogoURL}}" alt="{{.SiteName}}" class="logo" onerror="this.style.display='none'">{{end}}
    <div class="icon">📥</div>
    <h1>Your Download is Ready!</h1>
    <p>Your download should begin in just a moment.</p>
    <div class="filename">{{.Filename}}</div>
    <p style="margin-top:1.5rem;"><span class="loading"></span>Preparing your file...</p>
    <a href="{{.DownloadURL}}" id="retryLink" style="display:none;">Click here if download doesn't start</a>
  </div>

  <script>
    // Trigger the credential-free transfer GET through a hidden link and an
    // iframe fallback; show the retry link if neither starts the download.
    function triggerDownload() {
      const link = document.createElement('a');
      link.href = {{.DownloadURL}};
      link.download = {{.Filename}};
      link.style.display = 'none';
      document.body.appendChild(link);
      link.click();
      document.body.removeChild(link);
    }

    const iframe = document.createElement('iframe');
    iframe.style.display = 'none';
    iframe.src = {{.DownloadURL}};
    document.body.appendChild(iframe);

    triggerDownload();

    setTimeout(() => {
      document.getElementById('retryLink').style.display = 'inline-block';
      document.querySelector('.loading').style.display = 'none';
    }, 3000);

    setTimeout(() => {
      if (iframe.parentNode) {
        document.body.removeChild(iframe);
      }
    }, 10000);
  </script>
</body>
</html>`
