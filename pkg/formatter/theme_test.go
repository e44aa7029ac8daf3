package formatter

import "testing"

func TestToggleThemeVariant_Enable(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bg color", `<span class="bg-black"></span>`, `<span class="dark:bg-black"></span>`},
		{"border color", `<span class="border-red-500"></span>`, `<span class="dark:border-red-500"></span>`},
		{"border width", `<span class="border-t-4"></span>`, `<span class="border-t-4"></span>`},
		{"border opacity", `<span class="border-opacity-50"></span>`, `<span class="border-opacity-50"></span>`},
		{"placeholder color", `<span class="placeholder-coolGray-300"></span>`, `<span class="dark:placeholder-coolGray-300"></span>`},
		{"placeholder opacity", `<span class="placeholder-opacity-50"></span>`, `<span class="placeholder-opacity-50"></span>`},
		{"text color", `<span class="text-white"></span>`, `<span class="dark:text-white"></span>`},
		{"text size", `<span class="text-xl"></span>`, `<span class="text-xl"></span>`},
		{"numeric text size", `<span class="text-2xl"></span>`, `<span class="text-2xl"></span>`},
		{
			"gradient colors",
			`<span class="from-coolGray-100 via-coolGray-500 to-coolGray-900"></span>`,
			`<span class="dark:from-coolGray-100 dark:via-coolGray-500 dark:to-coolGray-900"></span>`,
		},
		{
			"mixed tokens keep spacing",
			`<div class="p-4  bg-white text-center top-0 text-gray-700"></div>`,
			`<div class="p-4  dark:bg-white text-center top-0 dark:text-gray-700"></div>`,
		},
		{"already dark", `<span class="dark:bg-black"></span>`, `<span class="dark:bg-black"></span>`},
		{"other variant", `<a class="hover:bg-red-500"></a>`, `<a class="dark:hover:bg-red-500"></a>`},
		{"jsx className", `<a className="bg-black"></a>`, `<a className="dark:bg-black"></a>`},
		{"border spacing", `<table class="border-spacing-2 border-gray-200"></table>`, `<table class="border-spacing-2 dark:border-gray-200"></table>`},
		{"single quoted class", `<span class='bg-black text-xl'></span>`, `<span class='dark:bg-black text-xl'></span>`},
		{"single quoted next to double quoted", `<a class='bg-black' title="text-white"></a>`, `<a class='dark:bg-black' title="text-white"></a>`},
		{"text content untouched", `<p class="x">go to-do bg-red</p>`, `<p class="x">go to-do bg-red</p>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToggleThemeVariant(tt.input, true); got != tt.want {
				t.Errorf("ToggleThemeVariant(true) = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToggleThemeVariant_Disable(t *testing.T) {
	input := `<span class="dark:bg-black"></span>`
	want := `<span class="bg-black"></span>`
	if got := ToggleThemeVariant(input, false); got != want {
		t.Errorf("ToggleThemeVariant(false) = %q, want %q", got, want)
	}
}

func TestToggleThemeVariant_RoundTrip(t *testing.T) {
	inputs := []string{
		`<span class="bg-black"></span>`,
		`<div class="border-red-500 border-t-4 text-xl text-white"><p class="from-coolGray-100">x</p></div>`,
	}
	for _, input := range inputs {
		enabled := ToggleThemeVariant(input, true)
		if got := ToggleThemeVariant(enabled, false); got != input {
			t.Errorf("round trip changed %q into %q", input, got)
		}
		if again := ToggleThemeVariant(enabled, true); again != enabled {
			t.Errorf("enabling twice changed %q into %q", enabled, again)
		}
	}
}

func TestToggleThemeVariant_CustomConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Theme.Marker = "contrast:"
	cfg.Theme.Families = []string{"ring"}
	cfg.Theme.Exclude = []string{"offset"}

	f, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	input := `<button class="ring-blue-500 ring-offset-2 bg-black"></button>`
	want := `<button class="contrast:ring-blue-500 ring-offset-2 bg-black"></button>`
	if got := f.ToggleThemeVariant(input, true); got != want {
		t.Errorf("ToggleThemeVariant() = %q, want %q", got, want)
	}
}
