package server

// thinClientJS is the browser half of the wire protocol: it connects the
// socket, applies mutation ops to the real DOM, and forwards DOM events
// for refs that have server-side listeners. It deliberately knows nothing
// about views or signals; it is a dumb mirror.
const thinClientJS = `"use strict";
(function () {
  var FRAME_HELLO = 0x00, FRAME_EVENT = 0x01, FRAME_OPS = 0x02,
      FRAME_CONTROL = 0x03, FRAME_ACK = 0x04, FRAME_ERROR = 0x05;
  var CTRL_PING = 0x01, CTRL_PONG = 0x02, CTRL_RESYNC_REQ = 0x10,
      CTRL_RESYNC_FULL = 0x12, CTRL_CLOSE = 0x20;
  var ACK_EVERY = 20;

  var td = new TextDecoder();
  var te = new TextEncoder();

  function reader(buf) {
    return { b: new Uint8Array(buf), p: 0 };
  }
  function u8(r) { return r.b[r.p++]; }
  function u16(r) { var v = (r.b[r.p] << 8) | r.b[r.p + 1]; r.p += 2; return v; }
  function uvarint(r) {
    var v = 0, shift = 0;
    for (;;) {
      var c = r.b[r.p++];
      v += (c & 0x7f) * Math.pow(2, shift);
      if ((c & 0x80) === 0) return v;
      shift += 7;
    }
  }
  function str(r) {
    var n = uvarint(r);
    var s = td.decode(r.b.subarray(r.p, r.p + n));
    r.p += n;
    return s;
  }
  function f64(r) {
    var v = new DataView(r.b.buffer, r.b.byteOffset + r.p, 8).getFloat64(0);
    r.p += 8;
    return v;
  }

  function writer() { return { out: [] }; }
  function wByte(w, b) { w.out.push(b & 0xff); }
  function wUvarint(w, v) {
    while (v >= 0x80) { w.out.push((v & 0x7f) | 0x80); v = Math.floor(v / 128); }
    w.out.push(v);
  }
  function wStr(w, s) {
    var bytes = te.encode(s);
    wUvarint(w, bytes.length);
    for (var i = 0; i < bytes.length; i++) w.out.push(bytes[i]);
  }
  function frame(type, payload) {
    var buf = new Uint8Array(4 + payload.length);
    buf[0] = type;
    buf[1] = 0;
    buf[2] = payload.length >> 8;
    buf[3] = payload.length & 0xff;
    buf.set(payload, 4);
    return buf;
  }

  var nodes = { 0: null };       // ref -> DOM node; 0 is the app container
  var listeners = {};            // "ref:type" -> DOM handler
  var ws = null;
  var lastSeq = 0;
  var framesSinceAck = 0;
  var sessionId = window.__FILAMENT_SESSION__ || "";

  function container() {
    if (!nodes[0]) nodes[0] = document.getElementById("app") || document.body;
    return nodes[0];
  }

  function sendEvent(ref, type, data) {
    var w = writer();
    wUvarint(w, ref);
    wStr(w, type);
    var keys = Object.keys(data);
    wUvarint(w, keys.length);
    keys.forEach(function (k) { wStr(w, k); wStr(w, data[k]); });
    ws.send(frame(FRAME_EVENT, new Uint8Array(w.out)));
  }

  function eventData(ev) {
    var d = {};
    var t = ev.target;
    if (t && t.value !== undefined) d.value = String(t.value);
    if (t && t.checked !== undefined) d.checked = String(t.checked);
    if (ev.key !== undefined) d.key = ev.key;
    if (ev.clientX !== undefined) { d.x = String(ev.clientX); d.y = String(ev.clientY); }
    return d;
  }

  function applyOp(r) {
    var code = u8(r);
    var target = uvarint(r);
    var node = nodes[target] === null ? container() : nodes[target];
    switch (code) {
      case 0x01: nodes[target] = document.createElement(str(r)); break;
      case 0x02: nodes[target] = document.createTextNode(str(r)); break;
      case 0x03: { var n = str(r); node.setAttribute(n, str(r)); break; }
      case 0x04: node.removeAttribute(str(r)); break;
      case 0x05: {
        var name = str(r), kind = u8(r), v = null;
        if (kind === 0x01) v = str(r);
        else if (kind === 0x02) v = u8(r) !== 0;
        else if (kind === 0x03) v = f64(r);
        node[name] = v;
        break;
      }
      case 0x06: { var p = str(r); node.style.setProperty(p, str(r)); break; }
      case 0x07: node.style.removeProperty(str(r)); break;
      case 0x08: node.textContent = str(r); break;
      case 0x09: node.innerHTML = str(r); break;
      case 0x0a: {
        var type = str(r);
        uvarint(r); // listener handle, unused client-side
        var key = target + ":" + type;
        if (!listeners[key]) {
          listeners[key] = function (ev) {
            if (type === "submit") ev.preventDefault();
            sendEvent(target, type, eventData(ev));
          };
          node.addEventListener(type, listeners[key]);
        }
        break;
      }
      case 0x0b: {
        var rtype = str(r);
        uvarint(r);
        var rkey = target + ":" + rtype;
        if (listeners[rkey]) {
          node.removeEventListener(rtype, listeners[rkey]);
          delete listeners[rkey];
        }
        break;
      }
      case 0x0c: node.appendChild(lookup(uvarint(r))); break;
      case 0x0d: {
        var child = lookup(uvarint(r));
        if (child.parentNode === node) node.removeChild(child);
        break;
      }
      case 0x0e: {
        var ins = lookup(uvarint(r));
        var refId = uvarint(r);
        node.insertBefore(ins, refId === 0 ? null : lookup(refId));
        break;
      }
      default:
        throw new Error("unknown op 0x" + code.toString(16));
    }
  }

  function lookup(ref) {
    return nodes[ref] === null ? container() : nodes[ref];
  }

  function applyOpsFrame(r) {
    var seq = uvarint(r);
    if (lastSeq !== 0 && seq !== lastSeq + 1) {
      // Gap in the stream; the server keeps no history, so reload.
      location.reload();
      return;
    }
    var firstFrame = lastSeq === 0;
    lastSeq = seq;
    var count = uvarint(r);
    if (firstFrame) container().textContent = "";
    for (var i = 0; i < count; i++) applyOp(r);
    if (++framesSinceAck >= ACK_EVERY) {
      framesSinceAck = 0;
      var w = writer();
      wUvarint(w, lastSeq);
      wUvarint(w, 100);
      ws.send(frame(FRAME_ACK, new Uint8Array(w.out)));
    }
  }

  function onFrame(buf) {
    var r = reader(buf);
    var type = u8(r);
    u8(r);     // flags
    u16(r);    // length
    switch (type) {
      case FRAME_OPS: applyOpsFrame(r); break;
      case FRAME_HELLO:
        u16(r); // version
        sessionId = str(r);
        break;
      case FRAME_CONTROL: {
        var ct = u8(r);
        if (ct === CTRL_PING) {
          var w = writer();
          wByte(w, CTRL_PONG);
          for (var i = 0; i < 8; i++) wByte(w, r.b[r.p + i]);
          ws.send(frame(FRAME_CONTROL, new Uint8Array(w.out)));
        } else if (ct === CTRL_RESYNC_FULL) {
          location.reload();
        } else if (ct === CTRL_CLOSE) {
          ws.close();
        }
        break;
      }
      case FRAME_ERROR:
        u16(r);
        console.error("filament: server error:", str(r));
        break;
    }
  }

  function connect() {
    var proto = location.protocol === "https:" ? "wss://" : "ws://";
    ws = new WebSocket(proto + location.host + "/_filament/ws");
    ws.binaryType = "arraybuffer";
    ws.onopen = function () {
      var w = writer();
      wByte(w, 0); wByte(w, 1); // protocol version 1, big-endian u16
      wStr(w, sessionId);
      wUvarint(w, lastSeq);
      ws.send(frame(FRAME_HELLO, new Uint8Array(w.out)));
    };
    ws.onmessage = function (ev) { onFrame(ev.data); };
    ws.onclose = function () {
      setTimeout(function () { location.reload(); }, 1000);
    };
  }

  if (document.readyState === "loading") {
    document.addEventListener("DOMContentLoaded", connect);
  } else {
    connect();
  }
})();
`
