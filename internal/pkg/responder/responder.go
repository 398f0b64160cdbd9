package responder

import (
	"bytes"
	"html/template"
	"io"

	"github.com/anicoll/esp32-status/internal/pkg/model"
)

// Header precedes every page. There is no Content-Length; closing the
// connection ends the body.
const Header = "HTTP/1.1 200 OK\r\nContent-Type: text/html\r\n\r\n"

const style = `
        body {
            font-family: Arial, sans-serif;
            text-align: center;
            background: linear-gradient(135deg, #1e3c72, #2a5298);
            color: white;
            margin: 0;
            padding: 0;
        }
        .container { width: 80%; margin: auto; padding: 20px; }
        .card {
            background: rgba(255, 255, 255, 0.2);
            padding: 20px;
            border-radius: 15px;
            box-shadow: 0px 4px 10px rgba(0, 0, 0, 0.2);
            margin-bottom: 20px;
        }
        h1 { font-size: 28px; margin-bottom: 10px; }
        h2 { font-size: 22px; margin: 10px 0; }
        input {
            padding: 12px;
            font-size: 16px;
            border: none;
            border-radius: 8px;
            text-align: center;
            width: 80px;
            margin: 5px;
            outline: none;
        }
        button {
            padding: 12px 20px;
            font-size: 18px;
            font-weight: bold;
            border: none;
            border-radius: 8px;
            background: #ff9800;
            color: white;
            cursor: pointer;
            transition: 0.3s;
        }
        button:hover { background: #e68900; }
        .alert { color: #ff0000; font-weight: bold; }
`

const page = `<!DOCTYPE html>
<html>
<head>
    <title>{{.Title}}</title>
    <style>{{.Style}}</style>
</head>
<body>
    <div class="container">
        <h1>{{.Heading}}</h1>

        <div class="card">
            <h2>Temperature: {{.Status.Reading.Temperature}}°C</h2>
            <h2>Humidity: {{.Status.Reading.Humidity}}%</h2>
        </div>
{{if eq .Status.Flavor "alarm"}}
        <div class="card">
            <h3>Alarm Status: {{if .Status.Alarm.Enabled}}<span class='alert'>ON</span>{{else}}OFF{{end}}</h3>
            <a href="/?alarm=on"><button>Turn Alarm ON</button></a>
            <a href="/?alarm=off"><button>Turn Alarm OFF</button></a>
        </div>
{{else}}
        <div class="card">
            <h3>Current Colour: {{.Status.RGB}}</h3>
            <h3>Set RGB Color</h3>
            <form action="/" method="GET">
                <input type="number" name="r" placeholder="Red (0-255)" min="0" max="255">
                <input type="number" name="g" placeholder="Green (0-255)" min="0" max="255">
                <input type="number" name="b" placeholder="Blue (0-255)" min="0" max="255">
                <br><br>
                <button type="submit">Set Color</button>
            </form>
        </div>
{{end}}
    </div>
</body>
</html>
`

var pageTmpl = template.Must(template.New("page").Parse(page))

type pageData struct {
	Title   string
	Heading string
	Style   template.CSS
	Status  model.Status
}

func titles(f model.Flavor) (string, string) {
	if f == model.FlavorAlarm {
		return "ESP32 Buzzer Alert", "ESP32 Buzzer Alert System"
	}
	return "ESP32 Web Server", "ESP32 RGB LED & Sensor Web Server"
}

// Render returns the full response, header included.
func Render(st model.Status) ([]byte, error) {
	title, heading := titles(st.Flavor)
	buf := bytes.NewBufferString(Header)
	if err := pageTmpl.Execute(buf, pageData{
		Title:   title,
		Heading: heading,
		Style:   template.CSS(style),
		Status:  st,
	}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write renders st and sends it to w in a single call.
func Write(w io.Writer, st model.Status) error {
	resp, err := Render(st)
	if err != nil {
		return err
	}
	_, err = w.Write(resp)
	return err
}
